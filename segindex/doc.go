// Package segindex flattens a segment collection into its 2N endpoints,
// builds a point index over them and keeps the slot-to-segment mapping.
//
// Endpoint slots are interleaved: slot 2i is the start of segment i and slot
// 2i+1 its end. SegmentOf and Slot are the only places that arithmetic lives.
package segindex
