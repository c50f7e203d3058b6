package library

// Kind classifies a type in the library.
type Kind int

const (
	KindEnumeration Kind = iota
	KindBitfield
	KindRecord
	KindClass
	KindInterface
	KindAlias
)

var kindNames = map[Kind]string{
	KindEnumeration: "enumeration",
	KindBitfield:    "bitfield",
	KindRecord:      "record",
	KindClass:       "class",
	KindInterface:   "interface",
	KindAlias:       "alias",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Type is any named type of a namespace.
type Type interface {
	TypeName() string
	Kind() Kind
}

// Enumeration is a native integer enumeration.
type Enumeration struct {
	Name              string     `json:"name"`
	CType             string     `json:"c_type"`
	Members           []Member   `json:"members"`
	Functions         []Function `json:"functions,omitempty"`
	Version           *Version   `json:"version,omitempty"`
	DeprecatedVersion *Version   `json:"deprecated_version,omitempty"`
	ErrorDomain       string     `json:"error_domain,omitempty"`
	GetType           string     `json:"glib_get_type,omitempty"` // runtime type registration accessor
	Doc               string     `json:"doc,omitempty"`
}

// TypeName implements Type.
func (e *Enumeration) TypeName() string { return e.Name }

// Kind implements Type.
func (e *Enumeration) Kind() Kind { return KindEnumeration }

// ErrorQuarkName returns the C function supplying the error-domain quark.
// A function named "quark" wins over the declared error domain. Returns ""
// when the enumeration is not an error domain.
func (e *Enumeration) ErrorQuarkName() string {
	for _, f := range e.Functions {
		if f.Name == "quark" && f.CIdentifier != "" {
			return f.CIdentifier
		}
	}
	return e.ErrorDomain
}

// Member is one native enumeration constant. Declaration order is the
// position in Enumeration.Members.
type Member struct {
	Name        string `json:"name"`
	CIdentifier string `json:"c_identifier"`
	Value       string `json:"value"` // source literal, not re-formatted
	Doc         string `json:"doc,omitempty"`
}

// Function is a native function attached to a type.
type Function struct {
	Name        string `json:"name"`
	CIdentifier string `json:"c_identifier"`
}

// Opaque is any non-enumeration type. girgen only needs its name and kind.
type Opaque struct {
	Name  string `json:"name"`
	CType string `json:"c_type"`
	K     Kind   `json:"kind"`
}

// TypeName implements Type.
func (o *Opaque) TypeName() string { return o.Name }

// Kind implements Type.
func (o *Opaque) Kind() Kind { return o.K }
