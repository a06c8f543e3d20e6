package application

import (
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// stepRand returns its values in order, wrapping around, each reduced
// modulo n.
type stepRand struct {
	values []int
	next   int
}

func (r *stepRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

func zeroRand() *stepRand { return &stepRand{} }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func manual(v string) domain.SelectionConfig {
	return domain.SelectionConfig{Mode: domain.ModeManual, Value: strPtr(v)}
}

func mode(m domain.SelectionMode) domain.SelectionConfig {
	return domain.SelectionConfig{Mode: m}
}
