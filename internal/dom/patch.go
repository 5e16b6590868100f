package dom

// OpKind names a single DOM mutation.
type OpKind string

const (
	OpText     OpKind = "text"     // replace text content
	OpValue    OpKind = "value"    // set an input's value
	OpDisable  OpKind = "disable"  // set the disabled flag
	OpEnable   OpKind = "enable"   // clear the disabled flag
	OpChildren OpKind = "children" // drop all children, append Children
	OpGauge    OpKind = "gauge"    // move a gauge needle target to Number
	OpCanvas   OpKind = "canvas"   // canvas pixels changed, Value is the displayed needle value
)

// Attr is an ordered attribute, so rebuilt nodes serialize deterministically.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is a childless element appended by an OpChildren op.
type Node struct {
	Tag   string `json:"tag"`
	Attrs []Attr `json:"attrs,omitempty"`
}

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Op is one mutation targeting the element with ID.
type Op struct {
	Kind     OpKind  `json:"op"`
	ID       string  `json:"id"`
	Text     string  `json:"text,omitempty"`
	Value    string  `json:"value,omitempty"`
	Number   float64 `json:"number,omitempty"`
	Children []Node  `json:"children,omitempty"`
}

// Patch is an ordered batch of ops produced by one event.
type Patch struct {
	Ops []Op `json:"ops"`
}

// Append adds ops to the patch.
func (p *Patch) Append(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// Split separates gauge ops from ops that target the document.
func (p Patch) Split() (gauges []Op, doc Patch) {
	for _, op := range p.Ops {
		if op.Kind == OpGauge {
			gauges = append(gauges, op)
			continue
		}
		doc.Ops = append(doc.Ops, op)
	}
	return gauges, doc
}

// Empty reports whether the patch carries no ops.
func (p Patch) Empty() bool {
	return len(p.Ops) == 0
}

func Text(id, text string) Op {
	return Op{Kind: OpText, ID: id, Text: text}
}

func Value(id, value string) Op {
	return Op{Kind: OpValue, ID: id, Value: value}
}

func Disable(id string) Op {
	return Op{Kind: OpDisable, ID: id}
}

func Enable(id string) Op {
	return Op{Kind: OpEnable, ID: id}
}

func Children(id string, nodes []Node) Op {
	return Op{Kind: OpChildren, ID: id, Children: nodes}
}

func Gauge(id string, v float64) Op {
	return Op{Kind: OpGauge, ID: id, Number: v}
}

func Canvas(id, displayed string) Op {
	return Op{Kind: OpCanvas, ID: id, Value: displayed}
}
