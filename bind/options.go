package bind

import (
	"reflect"

	"github.com/signadot/docmap/node"
	"github.com/signadot/docmap/typecache"
)

// ReadFunc reads a value of a registered type from n. m is the member
// being read, nil for roots, list elements and dictionary values.
type ReadFunc func(o *Options, m *typecache.Member, n *node.Node) (any, error)

// WriteFunc writes v, a value of a registered type, into n.
type WriteFunc func(o *Options, m *typecache.Member, v any, n *node.Node) error

// Option configures an Engine.
type Option interface {
	applyOption(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) applyOption(o *Options) { f(o) }

// Options is the configuration of an Engine. It is resolved once by New
// and read-only afterwards.
type Options struct {
	ignoreUnmatched     bool
	ignoreRootName      bool
	defaultEmptyScalars bool

	typeNaming    Naming
	memberNaming  Naming
	listFormat    string
	genericFormat string
	dictFormat    string

	excludes []func(*typecache.Descriptor) bool
	readers  map[reflect.Type]ReadFunc
	writers  map[reflect.Type]WriteFunc
	cache    *typecache.Cache
}

func newOptions() *Options {
	return &Options{
		typeNaming:    Identity,
		memberNaming:  Identity,
		listFormat:    "ArrayOf%s",
		genericFormat: "%sOf%s",
		dictFormat:    "DictionaryOf%sAnd%s",
		readers:       map[reflect.Type]ReadFunc{},
		writers:       map[reflect.Type]WriteFunc{},
		cache:         typecache.Default(),
	}
}

// IgnoreUnmatched skips document nodes that match no member or list
// element name instead of failing with ErrUnmatchedElement.
func IgnoreUnmatched(v bool) Option {
	return optionFunc(func(o *Options) { o.ignoreUnmatched = v })
}

// IgnoreRootName disables validation of the root node name.
func IgnoreRootName(v bool) Option {
	return optionFunc(func(o *Options) { o.ignoreRootName = v })
}

// DefaultEmptyScalars reads an empty value into a non-nullable scalar as
// its zero value instead of failing with ErrParse.
func DefaultEmptyScalars(v bool) Option {
	return optionFunc(func(o *Options) { o.defaultEmptyScalars = v })
}

func TypeNaming(n Naming) Option {
	return optionFunc(func(o *Options) { o.typeNaming = n })
}

func MemberNaming(n Naming) Option {
	return optionFunc(func(o *Options) { o.memberNaming = n })
}

// ListNameFormat sets the template for list type names; %s is the
// element name.
func ListNameFormat(f string) Option {
	return optionFunc(func(o *Options) { o.listFormat = f })
}

// GenericNameFormat sets the template for instantiated generic types; the
// verbs receive the base name and the argument names joined by "And".
func GenericNameFormat(f string) Option {
	return optionFunc(func(o *Options) { o.genericFormat = f })
}

// DictionaryNameFormat sets the template for dictionary type names; the
// verbs receive the key and value names.
func DictionaryNameFormat(f string) Option {
	return optionFunc(func(o *Options) { o.dictFormat = f })
}

// Exclude skips members whose type satisfies pred, in both directions.
func Exclude(pred func(*typecache.Descriptor) bool) Option {
	return optionFunc(func(o *Options) { o.excludes = append(o.excludes, pred) })
}

// ExcludeTypes skips members of exactly the given types.
func ExcludeTypes(types ...reflect.Type) Option {
	set := make(map[reflect.Type]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return Exclude(func(d *typecache.Descriptor) bool { return set[d.Type] })
}

// Reader registers fn for values of exactly type t.
func Reader(t reflect.Type, fn ReadFunc) Option {
	return optionFunc(func(o *Options) { o.readers[t] = fn })
}

// Writer registers fn for values of exactly type t.
func Writer(t reflect.Type, fn WriteFunc) Option {
	return optionFunc(func(o *Options) { o.writers[t] = fn })
}

// WithCache uses c instead of the process-wide descriptor cache.
func WithCache(c *typecache.Cache) Option {
	return optionFunc(func(o *Options) { o.cache = c })
}

func (o *Options) IgnoresUnmatched() bool     { return o.ignoreUnmatched }
func (o *Options) IgnoresRootName() bool      { return o.ignoreRootName }
func (o *Options) DefaultsEmptyScalars() bool { return o.defaultEmptyScalars }
func (o *Options) Cache() *typecache.Cache    { return o.cache }

// Excluded reports whether members of type d are skipped.
func (o *Options) Excluded(d *typecache.Descriptor) bool {
	for _, pred := range o.excludes {
		if pred(d) {
			return true
		}
	}
	return false
}

func (o *Options) reader(t reflect.Type) ReadFunc {
	return o.readers[t]
}

func (o *Options) writer(t reflect.Type) WriteFunc {
	return o.writers[t]
}
