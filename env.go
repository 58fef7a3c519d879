package quaver

// EnvPerc is a percussive envelope: a linear rise over Attack seconds
// followed by a linear fall over Decay seconds.
type EnvPerc struct {
	Attack, Decay float64 // seconds
	SR            float64
	pos           float64 // samples since trigger
	running       bool
}

func NewEnvPerc(attack, decay, sr float64) *EnvPerc {
	return &EnvPerc{Attack: attack, Decay: decay, SR: sr, running: true}
}

func (e *EnvPerc) trigger() {
	e.pos, e.running = 0, true
}

func (e *EnvPerc) next() float64 {
	if !e.running {
		return 0
	}
	a, d := e.Attack*e.SR, e.Decay*e.SR
	var v float64
	switch {
	case e.pos < a:
		v = e.pos / a
	case e.pos < a+d:
		v = 1 - (e.pos-a)/d
	default:
		e.running = false
		return 0
	}
	e.pos++
	return v
}

func (e *EnvPerc) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		for i := range output {
			output[i] = e.next()
		}
	case 1:
		trig := inputs[0]
		for i := range output {
			if trig[i] != 0 {
				e.trigger()
			}
			output[i] = e.next()
		}
	}
}

func (e *EnvPerc) SetParam(p Param) {
	switch p.Index {
	case 0:
		e.trigger()
	case 1:
		e.Attack = p.Value
	case 2:
		e.Decay = p.Value
	}
}
