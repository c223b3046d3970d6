// Package mem provides low-level buffer allocation helpers shared by the
// storage layer.
//
// # Aligned Allocation
//
// AllocAligned returns byte buffers aligned to a 64-byte (cache-line)
// boundary (see Alignment). The alignment is smaller than a Page (see
// package page), so the buffers are not sector-aligned O_DIRECT targets.
package mem
