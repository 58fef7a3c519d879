package quaver

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	ErrUnresolved    = errors.New("unresolved reference")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrUnknownSample = errors.New("unknown sample")
	ErrArgs          = errors.New("bad arguments")
)

// argument forms accepted by a constructor
const (
	modulatable = iota // number, or name of a node feeding this one
	literal            // number only
	symbol             // \name of a sample table
	steps              // note grid
)

type param struct {
	raw   string
	value float64
	ref   NodeID
	isRef bool
}

// or returns the literal value, or def when the parameter is a reference.
func (p param) or(def float64) float64 {
	if p.isRef {
		return def
	}
	return p.value
}

type constructor struct {
	args  int // required argument count, 0 for steps
	form  int
	build func(c *Compiler, p []param) (Unit, error)
}

var catalog = map[string]constructor{
	//name        args form         build
	"sin":      {1, modulatable, func(c *Compiler, p []param) (Unit, error) { return NewSinOsc(p[0].or(0), c.SampleRate), nil }},
	"squ":      {1, modulatable, func(c *Compiler, p []param) (Unit, error) { return NewSquOsc(p[0].or(0), c.SampleRate), nil }},
	"tri":      {1, modulatable, func(c *Compiler, p []param) (Unit, error) { return NewTriOsc(p[0].or(0), c.SampleRate), nil }},
	"imp":      {1, modulatable, func(c *Compiler, p []param) (Unit, error) { return NewImpulse(p[0].or(0), c.SampleRate), nil }},
	"add":      {1, modulatable, func(c *Compiler, p []param) (Unit, error) { return &Add{Value: p[0].or(0)}, nil }},
	"mul":      {1, modulatable, func(c *Compiler, p []param) (Unit, error) { return &Mul{Value: p[0].or(1)}, nil }},
	"speed":    {1, modulatable, func(c *Compiler, p []param) (Unit, error) { return &Speed{Value: p[0].or(1)}, nil }},
	"env_perc": {2, literal, func(c *Compiler, p []param) (Unit, error) { return NewEnvPerc(p[0].value, p[1].value, c.SampleRate), nil }},
	"sampler":  {1, symbol, buildSampler},
	"loop":     {0, steps, buildLoop},
}

func buildSampler(c *Compiler, p []param) (Unit, error) {
	name := strings.TrimPrefix(p[0].raw, `\`)
	table, ok := c.Samples[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSample, "%q", name)
	}
	return NewSampler(table), nil
}

func buildLoop(c *Compiler, p []param) (Unit, error) {
	compounds := make([]string, len(p))
	for i := range p {
		compounds[i] = p[i].raw
	}
	return NewSequencer(expandSequence(compounds), c.CycleSamples), nil
}

// Compiler turns parse trees into graphs.
type Compiler struct {
	SampleRate   float64
	CycleSamples float64 // length of one loop cycle
	Samples      SampleTable
}

// CompileText parses code and compiles it into g.
func (c *Compiler) CompileText(code string, g *Graph) error {
	tree, err := Parse(code)
	if err != nil {
		return err
	}
	return c.Compile(tree, g)
}

// Compile adds the nodes, edges and names of tree to g. Names must be bound
// by an earlier line before they are referenced. On error g holds a partial
// graph and should be discarded.
func (c *Compiler) Compile(tree *PatchTree, g *Graph) error {
	for _, line := range tree.Lines {
		if err := c.line(line, g); err != nil {
			return err
		}
	}
	return g.checkAcyclic()
}

func (c *Compiler) line(line *LineTree, g *Graph) error {
	ref := line.Ref
	if ref == "" {
		ref = Anonymous
	}
	prev, have := NodeID(-1), false
	for _, elem := range line.Chain {
		var (
			id  NodeID
			err error
		)
		if elem.Call == nil {
			var ok bool
			if id, ok = g.Names.Lookup(elem.Ref); !ok {
				return errors.Wrapf(ErrUnresolved, "%s: &%s", at(elem.Pos), elem.Ref)
			}
			if have {
				err = g.AddEdge(prev, id)
			}
		} else {
			id, err = c.call(elem.Call, g, prev, have)
		}
		if err != nil {
			return err
		}
		prev, have = id, true
	}
	g.Names.Bind(ref, prev)
	return nil
}

// call instantiates one constructor. Its input slots are, in order: the
// chain predecessor, referenced parameters, then &name modulators.
func (c *Compiler) call(call *CallTree, g *Graph, prev NodeID, have bool) (NodeID, error) {
	con, ok := catalog[call.Name]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownUnit, "%s: %s", at(call.Pos), call.Name)
	}
	params, err := c.params(call, con, g)
	if err != nil {
		return -1, err
	}
	u, err := con.build(c, params)
	if err != nil {
		return -1, errors.Wrapf(err, "%s: %s", at(call.Pos), call.Name)
	}
	id, err := g.AddNode(call.Name, u)
	if err != nil {
		return -1, err
	}
	if have {
		if err := g.AddEdge(prev, id); err != nil {
			return -1, err
		}
	}
	for _, p := range params {
		if !p.isRef {
			continue
		}
		if err := g.AddEdge(p.ref, id); err != nil {
			return -1, err
		}
	}
	for _, name := range call.Mods {
		src, ok := g.Names.Lookup(name)
		if !ok {
			return -1, errors.Wrapf(ErrUnresolved, "%s: %s&%s", at(call.Pos), call.Name, name)
		}
		if err := g.AddEdge(src, id); err != nil {
			return -1, err
		}
	}
	return id, nil
}

func (c *Compiler) params(call *CallTree, con constructor, g *Graph) ([]param, error) {
	if con.form == steps {
		var p []param
		for _, a := range call.Args {
			for _, atom := range a.Atoms {
				p = append(p, param{raw: atom})
			}
		}
		return p, nil
	}
	if len(call.Args) != con.args {
		return nil, errors.Wrapf(ErrArgs, "%s: %s takes %d argument(s), got %d", at(call.Pos), call.Name, con.args, len(call.Args))
	}
	p := make([]param, len(call.Args))
	for i, a := range call.Args {
		if len(a.Atoms) != 1 {
			return nil, errors.Wrapf(ErrArgs, "%s: %s argument %d: %q", at(a.Pos), call.Name, i+1, strings.Join(a.Atoms, " "))
		}
		raw := a.Atoms[0]
		p[i].raw = raw
		if con.form == symbol {
			if !strings.HasPrefix(raw, `\`) {
				return nil, errors.Wrapf(ErrArgs, `%s: %s wants a \symbol, got %q`, at(a.Pos), call.Name, raw)
			}
			continue
		}
		if n, ok := parseNumber(raw); ok {
			p[i].value = n
			continue
		}
		if con.form == literal {
			return nil, errors.Wrapf(ErrArgs, "%s: %s argument %d is not a number: %q", at(a.Pos), call.Name, i+1, raw)
		}
		id, ok := g.Names.Lookup(raw)
		if !ok {
			return nil, errors.Wrapf(ErrUnresolved, "%s: %s(%s)", at(a.Pos), call.Name, raw)
		}
		p[i].ref, p[i].isRef = id, true
	}
	return p, nil
}

func at(pos lexer.Position) string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}
