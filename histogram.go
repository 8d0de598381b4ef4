package hshex

import "github.com/samber/lo"

// NumBuckets is the number of histogram buckets; each covers 256 channel
// values.
const NumBuckets = 256

// Histogram counts channel values per bucket, all three channels pooled.
type Histogram [NumBuckets]uint64

// BucketCount is one non-empty histogram entry.
type BucketCount struct {
	Bucket uint8
	Count  uint64
}

// Bucket returns the bucket a channel value falls into.
func Bucket(v uint16) uint8 {
	return uint8(v >> 8)
}

// ComputeHistogram counts every channel of every pixel of img.
func ComputeHistogram(img *Image) Histogram {
	var h Histogram
	for _, p := range img.pix {
		h[Bucket(p.R)]++
		h[Bucket(p.G)]++
		h[Bucket(p.B)]++
	}
	return h
}

// Total returns the sum of all bucket counts, three per pixel.
func (h Histogram) Total() uint64 {
	return lo.Sum(h[:])
}

// NonZero returns the non-empty buckets in ascending bucket order.
func (h Histogram) NonZero() []BucketCount {
	all := lo.Map(h[:], func(n uint64, i int) BucketCount {
		return BucketCount{Bucket: uint8(i), Count: n}
	})
	return lo.Filter(all, func(b BucketCount, _ int) bool {
		return b.Count > 0
	})
}
