package core

// Instance is an arbitrary pattern formation problem: where the robots
// start and the pattern they must form.
type Instance struct {
	Configuration Configuration
	Pattern       Configuration
}

// NewInstance validates and copies the inputs.
func NewInstance(configuration, pattern Configuration) (*Instance, error) {
	inst := &Instance{
		Configuration: configuration.Copy(),
		Pattern:       pattern.Copy(),
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Validate checks that every robot has a target point.
func (inst *Instance) Validate() error {
	if len(inst.Configuration) != len(inst.Pattern) {
		return &InvalidInputError{
			ConfigurationLen: len(inst.Configuration),
			PatternLen:       len(inst.Pattern),
		}
	}
	return nil
}

// RobotCount returns the number of robots.
func (inst *Instance) RobotCount() int {
	return len(inst.Configuration)
}

// Solved reports whether the configuration already forms the pattern.
func (inst *Instance) Solved() bool {
	return inst.Configuration.EqualMultiset(inst.Pattern)
}
