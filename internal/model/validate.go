package model

import "github.com/rotisserie/eris"

// Validate checks a UserRequest for structural problems before the pipeline
// runs. Unknown transport modes are rejected rather than silently dropped.
func (r *UserRequest) Validate() error {
	if r.Address == "" {
		return eris.New("model: address is required")
	}
	if r.CommuteMax <= 0 {
		return eris.New("model: commuteMax must be positive")
	}
	if len(r.TransportModes) == 0 {
		return eris.New("model: at least one transport mode is required")
	}
	if len(r.TransportModes) > 3 {
		return eris.Errorf("model: too many transport modes (%d)", len(r.TransportModes))
	}
	for _, m := range r.TransportModes {
		if !ValidMode(m) {
			return eris.Errorf("model: unrecognized transport mode %q", m)
		}
	}
	switch r.HomeType {
	case "", HomeStudio, HomeOneBed, HomeTwoBed, HomeThreeBed, HomeTownhouse, HomeHouse:
	default:
		return eris.Errorf("model: unrecognized home type %q", r.HomeType)
	}
	return nil
}
