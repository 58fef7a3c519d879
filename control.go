package quaver

// Event is one step of a compiled loop. Time is the position within the
// cycle in [0,1), Pitch a frequency ratio relative to note 60.
type Event struct {
	Time  float64
	Pitch float64
}

// Sequencer steps through Events once per cycle of CycleSamples samples
// scaled by its speed. It outputs the event pitch on the sample an event
// fires and 0 elsewhere, so downstream units treat it as a trigger.
type Sequencer struct {
	Events       []Event
	CycleSamples float64
	Speed        float64
	clock        float64 // position within the cycle
	speed        float64 // held speed from input
}

func NewSequencer(events []Event, cycleSamples float64) *Sequencer {
	return &Sequencer{Events: events, CycleSamples: cycleSamples, Speed: 1, speed: 1}
}

func (s *Sequencer) step(speed float64) float64 {
	prev := s.clock
	s.clock += speed / s.CycleSamples
	wrapped := s.clock >= 1
	if wrapped {
		s.clock -= 1
	}
	out := 0.0
	for _, ev := range s.Events {
		var hit bool
		if wrapped {
			hit = ev.Time >= prev || ev.Time < s.clock
		} else {
			hit = ev.Time >= prev && ev.Time < s.clock
		}
		if hit {
			out = ev.Pitch
		}
	}
	return out
}

func (s *Sequencer) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		for i := range output {
			output[i] = s.step(s.Speed)
		}
	case 1:
		mod := inputs[0]
		for i := range output {
			s.speed = hold(s.speed, mod[i])
			output[i] = s.step(s.speed)
		}
	}
}

func (s *Sequencer) SetParam(p Param) {
	if p.Index == 0 {
		s.Speed = p.Value
	}
}

// Speed is a rate control: a constant source, or a scaler of an upstream
// rate.
type Speed struct {
	Value float64
}

func (s *Speed) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		for i := range output {
			output[i] = s.Value
		}
	case 1:
		in := inputs[0]
		for i := range output {
			output[i] = in[i] * s.Value
		}
	}
}

func (s *Speed) SetParam(p Param) {
	if p.Index == 0 {
		s.Value = p.Value
	}
}
