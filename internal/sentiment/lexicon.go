package sentiment

// NeutralPrior scales total keyword hits into the derived neutral share.
const NeutralPrior = 0.2

var positiveWords = map[string]struct{}{
	"growth": {}, "beat": {}, "record": {}, "increase": {}, "strong": {},
	"optimistic": {}, "improve": {}, "profit": {}, "surge": {}, "upbeat": {},
}

var negativeWords = map[string]struct{}{
	"decline": {}, "drop": {}, "miss": {}, "risk": {}, "loss": {},
	"decrease": {}, "weak": {}, "headwind": {}, "uncertain": {}, "downturn": {},
}

// IsPositive reports whether token is in the positive keyword set.
func IsPositive(token string) bool {
	_, ok := positiveWords[token]
	return ok
}

// IsNegative reports whether token is in the negative keyword set.
func IsNegative(token string) bool {
	_, ok := negativeWords[token]
	return ok
}
