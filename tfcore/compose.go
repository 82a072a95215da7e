package tfcore

import "github.com/frametree/tfcache/frame"

// compose implements spec §4.5. inverse is ordered from the meeting frame
// out to source, forward from the meeting frame out to target. The two legs accumulate differently: the inverse leg
// extends R on the right (R := R∘entry) because each entry is already
// oriented parent-to-child moving away from the meeting frame toward
// source; the forward leg extends R on the left with the entry's inverse
// (R := entry⁻¹∘R) because each of its entries is oriented toward target,
// so bringing it into R means prepending, not appending. Getting this
// backwards silently flips the translation's sign — pin any change here
// against the chain-compose scenario.
func compose(inverse, forward []frame.Transform, target, source frame.ID, t frame.Stamp) frame.Transform {
	r := frame.Identity(target, source, t)
	for _, entry := range inverse {
		r = r.Mul(entry)
	}
	for _, entry := range forward {
		r = entry.Inverse().Mul(r)
	}
	r.Parent = target
	r.Child = source
	r.Stamp = t
	return r
}
