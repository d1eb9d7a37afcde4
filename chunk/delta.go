package chunk

import (
	"slices"

	"github.com/arloliu/numpress/bitio"
	"github.com/arloliu/numpress/numeric"
)

// DeltaMoments holds the order-k prefix state of the finite-difference
// transform: one initial value per order, consumed by the decoder to
// reconstruct originals by repeated prefix-sum.
//
// The moment count always equals the file's delta encoding order; when a
// chunk holds fewer numbers than the order, the missing moments are zero.
type DeltaMoments[S any] struct {
	Moments []S
}

// Order returns the delta encoding order the moments were captured for.
func (m DeltaMoments[S]) Order() int {
	return len(m.Moments)
}

func parseDeltaMoments[S any](st numeric.Type[S, S], order int, r *bitio.Reader) (DeltaMoments[S], error) {
	moments := make([]S, order)
	for i := range moments {
		var err error
		moments[i], err = st.ReadFrom(r)
		if err != nil {
			return DeltaMoments[S]{}, err
		}
	}

	return DeltaMoments[S]{Moments: moments}, nil
}

func (m DeltaMoments[S]) writeTo(st numeric.Type[S, S], w *bitio.Writer) {
	for _, moment := range m.Moments {
		st.WriteTo(w, moment)
	}
}

// DeltaEncode maps values into the signed domain and replaces them with
// their order-k finite difference. It returns the k initial moments and the
// max(0, len(values)-k) remaining deltas the body encodes.
func DeltaEncode[T, S any](dt numeric.Type[T, S], values []T, order int) (DeltaMoments[S], []S) {
	seq := make([]S, len(values))
	for i, v := range values {
		seq[i] = dt.ToSigned(v)
	}

	moments := make([]S, order)
	for o := 0; o < order; o++ {
		if len(seq) == 0 {
			continue
		}
		moments[o] = seq[0]
		for i := 0; i+1 < len(seq); i++ {
			seq[i] = dt.SubSigned(seq[i+1], seq[i])
		}
		seq = seq[:len(seq)-1]
	}

	return DeltaMoments[S]{Moments: moments}, seq
}

// DeltaDecode inverts DeltaEncode, reconstructing n values from the moments
// and the delta sequence. Deltas beyond len(deltas) are treated as zero, so
// chunks shorter than the encoding order decode from their moments alone.
func DeltaDecode[T, S any](dt numeric.Type[T, S], moments DeltaMoments[S], deltas []S, n int) []T {
	k := moments.Order()

	out := make([]T, n)
	if k == 0 {
		for i := range out {
			out[i] = dt.FromSigned(deltas[i])
		}

		return out
	}

	state := slices.Clone(moments.Moments)
	for i := 0; i < n; i++ {
		out[i] = dt.FromSigned(state[0])

		var d S
		if i < len(deltas) {
			d = deltas[i]
		}
		for j := 0; j+1 < k; j++ {
			state[j] = dt.AddSigned(state[j], state[j+1])
		}
		state[k-1] = dt.AddSigned(state[k-1], d)
	}

	return out
}
