package quaver

// Add offsets its input by Value. Without input it is a constant source;
// with two inputs the second replaces Value sample by sample.
type Add struct {
	Value float64
}

func (a *Add) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		for i := range output {
			output[i] = a.Value
		}
	case 1:
		in := inputs[0]
		for i := range output {
			output[i] = in[i] + a.Value
		}
	case 2:
		in, mod := inputs[0], inputs[1]
		for i := range output {
			output[i] = in[i] + mod[i]
		}
	}
}

func (a *Add) SetParam(p Param) {
	if p.Index == 0 {
		a.Value = p.Value
	}
}

// Mul scales its input by Value; with two inputs it is a ring modulator,
// which is how an envelope gates a signal.
type Mul struct {
	Value float64
}

func (m *Mul) Process(inputs []*Buffer, output *Buffer) {
	switch len(inputs) {
	case 0:
		*output = Buffer{}
	case 1:
		in := inputs[0]
		for i := range output {
			output[i] = in[i] * m.Value
		}
	case 2:
		in, mod := inputs[0], inputs[1]
		for i := range output {
			output[i] = in[i] * mod[i]
		}
	}
}

func (m *Mul) SetParam(p Param) {
	if p.Index == 0 {
		m.Value = p.Value
	}
}
