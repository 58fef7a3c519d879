package quaver

import "math"

// Sampler plays a sample table. Past the end of the table it is silent.
type Sampler struct {
	table  []float64
	cursor float64
	rate   float64
}

// NewSampler starts playing table once at its original rate.
func NewSampler(table []float64) *Sampler {
	return &Sampler{table: table, rate: 1}
}

func (s *Sampler) next() float64 {
	i := int(s.cursor)
	if i >= len(s.table) || s.cursor < 0 {
		return 0
	}
	v := s.table[i]
	if frac := s.cursor - math.Floor(s.cursor); frac > 0 && i+1 < len(s.table) {
		v += (s.table[i+1] - v) * frac
	}
	s.cursor += s.rate
	return v
}

func (s *Sampler) restart(rate float64) {
	s.cursor, s.rate = 0, rate
}

func (s *Sampler) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		for i := range output {
			output[i] = s.next()
		}
	case 1:
		trig := inputs[0]
		for i := range output {
			if trig[i] != 0 {
				s.restart(trig[i])
			}
			output[i] = s.next()
		}
	}
}

func (s *Sampler) SetParam(p Param) {
	if p.Index != 0 {
		return
	}
	rate := p.Value
	if rate == 0 {
		rate = 1
	}
	s.restart(rate)
}
