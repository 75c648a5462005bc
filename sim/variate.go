// Variate generators: seeded samplers for inter-arrival, service and
// patience times, selected by distribution family.

package sim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Supported distribution families.
const (
	FamilyExponential   = "exponential"   // params: rate
	FamilyDeterministic = "deterministic" // params: value
	FamilyUniform       = "uniform"       // params: min, max
	FamilyGamma         = "gamma"         // params: shape, scale
	FamilyLogNormal     = "lognormal"     // params: mu, sigma
	FamilyNormal        = "normal"        // params: mean, stddev (truncated to positive draws)
)

// DistSpec selects a distribution family with named parameters.
type DistSpec struct {
	Family string             `yaml:"family"`
	Params map[string]float64 `yaml:"params"`
}

func (d DistSpec) param(name string) (float64, bool) {
	v, ok := d.Params[name]
	return v, ok
}

// Validate checks the family and its parameters, naming the offending field
// in the returned InvalidParameterError. field is the config path used in
// error messages, e.g. "arrival" or "service".
func (d DistSpec) Validate(field string) error {
	requirePositive := func(name string) error {
		v, ok := d.param(name)
		if !ok {
			return &InvalidParameterError{Field: field + "." + name, Reason: "missing parameter"}
		}
		if v <= 0 {
			return &InvalidParameterError{Field: field + "." + name, Reason: "must be positive"}
		}
		return nil
	}

	switch d.Family {
	case FamilyExponential:
		return requirePositive("rate")
	case FamilyDeterministic:
		return requirePositive("value")
	case FamilyUniform:
		min, okMin := d.param("min")
		max, okMax := d.param("max")
		if !okMin || !okMax {
			return &InvalidParameterError{Field: field, Reason: "uniform requires min and max"}
		}
		if min < 0 {
			return &InvalidParameterError{Field: field + ".min", Reason: "must not be negative"}
		}
		if max <= min {
			return &InvalidParameterError{Field: field + ".max", Reason: "must be greater than min"}
		}
		return nil
	case FamilyGamma:
		if err := requirePositive("shape"); err != nil {
			return err
		}
		return requirePositive("scale")
	case FamilyLogNormal:
		if _, ok := d.param("mu"); !ok {
			return &InvalidParameterError{Field: field + ".mu", Reason: "missing parameter"}
		}
		return requirePositive("sigma")
	case FamilyNormal:
		if err := requirePositive("mean"); err != nil {
			return err
		}
		return requirePositive("stddev")
	default:
		return &InvalidParameterError{Field: field + ".family", Reason: "unknown distribution family: " + d.Family}
	}
}

// Sampler produces i.i.d. strictly positive draws from a configured
// distribution. Implementations are deterministic for a fixed source.
type Sampler interface {
	Sample() float64
}

// NewSampler builds a Sampler for the given spec, drawing randomness from
// src. The spec is validated first; construction fails with an
// InvalidParameterError on bad parameters.
func NewSampler(field string, d DistSpec, src rand.Source) (Sampler, error) {
	if err := d.Validate(field); err != nil {
		return nil, err
	}
	switch d.Family {
	case FamilyExponential:
		return positiveSampler{distuv.Exponential{Rate: d.Params["rate"], Src: src}}, nil
	case FamilyDeterministic:
		return constantSampler{value: d.Params["value"]}, nil
	case FamilyUniform:
		return positiveSampler{distuv.Uniform{Min: d.Params["min"], Max: d.Params["max"], Src: src}}, nil
	case FamilyGamma:
		// distuv parameterizes Gamma by rate; Beta = 1/scale.
		return positiveSampler{distuv.Gamma{Alpha: d.Params["shape"], Beta: 1 / d.Params["scale"], Src: src}}, nil
	case FamilyLogNormal:
		return positiveSampler{distuv.LogNormal{Mu: d.Params["mu"], Sigma: d.Params["sigma"], Src: src}}, nil
	case FamilyNormal:
		return positiveSampler{distuv.Normal{Mu: d.Params["mean"], Sigma: d.Params["stddev"], Src: src}}, nil
	default:
		// Unreachable: Validate rejects unknown families.
		return nil, &InvalidParameterError{Field: field + ".family", Reason: "unknown distribution family: " + d.Family}
	}
}

// constantSampler returns a fixed value, for deterministic scenarios.
type constantSampler struct {
	value float64
}

func (s constantSampler) Sample() float64 {
	return s.value
}

// positiveSampler rejects non-positive draws and resamples. Exponential,
// gamma, lognormal and uniform(min≥0) draws are almost surely positive
// already; the loop matters for the truncated normal family.
type positiveSampler struct {
	dist interface{ Rand() float64 }
}

func (s positiveSampler) Sample() float64 {
	for {
		if v := s.dist.Rand(); v > 0 {
			return v
		}
	}
}
