package typecache

import (
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type Color int

func (c Color) String() string { return "color" + strconv.Itoa(int(c)) }

type Page[T any] struct {
	Items []T
	Next  string
}

type Pair[K comparable, V any] struct {
	Key K
	Val V
}

type Base struct {
	ID      int
	Created string
}

type tagged struct {
	Meta `docmap:"name=person,allowExtra"`
	Base
	Name    string `docmap:"name=fullName"`
	Secret  string `docmap:"omit"`
	Skip    int    `docmap:"-"`
	Created string
	hidden  int
	Fn      func()
	Ch      chan int
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		typ   reflect.Type
		check func(d *Descriptor) bool
	}{
		{"int is scalar", reflect.TypeFor[int](), func(d *Descriptor) bool { return d.IsScalar && !d.IsEnum }},
		{"string is scalar", reflect.TypeFor[string](), func(d *Descriptor) bool { return d.IsScalar }},
		{"time is text scalar", reflect.TypeFor[time.Time](), func(d *Descriptor) bool { return d.IsScalar && d.IsText && !d.IsStruct }},
		{"duration", reflect.TypeFor[time.Duration](), func(d *Descriptor) bool { return d.IsScalar && d.IsDuration }},
		{"bytes", reflect.TypeFor[[]byte](), func(d *Descriptor) bool { return d.IsScalar && d.IsBytes && !d.IsList }},
		{"enum", reflect.TypeFor[Color](), func(d *Descriptor) bool { return d.IsScalar && d.IsEnum }},
		{"pointer", reflect.TypeFor[*int](), func(d *Descriptor) bool {
			return d.IsNullable && d.Underlying().Type == reflect.TypeFor[int]()
		}},
		{"generic list", reflect.TypeFor[[]string](), func(d *Descriptor) bool {
			return d.IsList && d.IsGenericList && !d.IsNonGenericList && d.IsEnumerable && d.Elem().Type.Kind() == reflect.String
		}},
		{"non-generic list", reflect.TypeFor[[]any](), func(d *Descriptor) bool { return d.IsList && d.IsNonGenericList }},
		{"array", reflect.TypeFor[[3]int](), func(d *Descriptor) bool { return d.IsList && d.IsArray }},
		{"dictionary", reflect.TypeFor[map[string]int](), func(d *Descriptor) bool {
			k, v := d.DictionaryTypes()
			return d.IsDictionary && d.IsGenericDictionary && k.Type.Kind() == reflect.String && v.Type.Kind() == reflect.Int
		}},
		{"non-generic dictionary", reflect.TypeFor[map[string]any](), func(d *Descriptor) bool { return d.IsNonGenericDictionary }},
		{"placeholder", reflect.TypeFor[any](), func(d *Descriptor) bool { return d.IsPlaceholder && d.IsInterface }},
		{"stringer interface", reflect.TypeFor[interface{ String() string }](), func(d *Descriptor) bool {
			return d.IsInterface && !d.IsPlaceholder
		}},
		{"func unsupported", reflect.TypeFor[func()](), func(d *Descriptor) bool { return d.IsUnsupported }},
		{"struct", reflect.TypeFor[Base](), func(d *Descriptor) bool { return d.IsStruct && !d.IsScalar }},
	}
	c := NewCache()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(c.Get(tt.typ)) {
				t.Errorf("classification failed for %s: %+v", tt.typ, c.Get(tt.typ))
			}
		})
	}
}

func TestGenericNames(t *testing.T) {
	c := NewCache()
	d := c.Get(reflect.TypeFor[Page[Base]]())
	if !d.IsGeneric {
		t.Fatalf("expected generic")
	}
	if d.Name != "Page" || d.GenericBaseName != "Page" || d.FriendlyName != "Page[Base]" {
		t.Errorf("names = %q %q %q", d.Name, d.GenericBaseName, d.FriendlyName)
	}
	if diff := cmp.Diff([]string{"Base"}, d.GenericArgs()); diff != "" {
		t.Errorf("GenericArgs() mismatch (-want +got):\n%s", diff)
	}
	p := c.Get(reflect.TypeFor[Pair[string, Page[int]]]())
	if diff := cmp.Diff([]string{"string", "Page[int]"}, p.GenericArgs()); diff != "" {
		t.Errorf("GenericArgs() mismatch (-want +got):\n%s", diff)
	}
	if c.Get(reflect.TypeFor[Base]()).IsGeneric {
		t.Errorf("Base is not generic")
	}
	if c.Get(reflect.TypeFor[[]int]()).IsGeneric {
		t.Errorf("slice is not generic")
	}
}

func TestMembers(t *testing.T) {
	c := NewCache()
	d := c.Get(reflect.TypeFor[tagged]())
	type view struct {
		Name, Wire string
		Ignore     bool
		Index      []int
	}
	var got []view
	for _, m := range d.Members() {
		got = append(got, view{m.Name, m.WireName, m.Ignore, m.Index})
	}
	want := []view{
		{"ID", "", false, []int{1, 0}},
		{"Name", "fullName", false, []int{2}},
		{"Secret", "", true, []int{3}},
		{"Skip", "", true, []int{4}},
		{"Created", "", false, []int{5}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Members() mismatch (-want +got):\n%s", diff)
	}
	if v, ok := d.Attribute("name"); !ok || v != "person" {
		t.Errorf("Attribute(name) = %q, %v", v, ok)
	}
	if !d.HasAttribute("allowExtra") {
		t.Errorf("expected allowExtra attribute")
	}
	k, _, ok := d.FindAttribute(func(k, _ string) bool { return k == "allowExtra" })
	if !ok || k != "allowExtra" {
		t.Errorf("FindAttribute() = %q, %v", k, ok)
	}
}

type InnerID struct{ ID int }

type renamedOuter struct {
	InnerID
	ID int `docmap:"name=outerId"`
}

type OtherX struct{ X int }
type TaggedX struct {
	X int `docmap:"name=X"`
}
type PlainX struct{ X int }

type tiedX struct {
	OtherX
	PlainX
	Y int
}

type taggedTie struct {
	OtherX
	TaggedX
}

func TestMemberDominance(t *testing.T) {
	c := NewCache()
	keys := func(d *Descriptor) [][]int {
		var res [][]int
		for _, m := range d.Members() {
			res = append(res, m.Index)
		}
		return res
	}
	tests := []struct {
		name string
		typ  reflect.Type
		want [][]int
	}{
		{"renamed outer keeps promoted field", reflect.TypeFor[renamedOuter](), [][]int{{0, 0}, {1}}},
		{"same depth tie drops both", reflect.TypeFor[tiedX](), [][]int{{2}}},
		{"same depth tie goes to tagged", reflect.TypeFor[taggedTie](), [][]int{{1, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, keys(c.Get(tt.typ))); diff != "" {
				t.Errorf("Members() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	d := c.Get(reflect.TypeFor[renamedOuter]())
	v := renamedOuter{InnerID: InnerID{ID: 1}, ID: 2}
	rv := reflect.ValueOf(&v).Elem()
	var got []int64
	for _, m := range d.Members() {
		x, ok := m.Get(rv)
		if !ok {
			t.Fatalf("Get(%v) failed", m.Index)
		}
		got = append(got, x.Int())
	}
	if diff := cmp.Diff([]int64{1, 2}, got); diff != "" {
		t.Errorf("getters mismatch (-want +got):\n%s", diff)
	}
	members := d.Members()
	if err := members[0].Set(rv, reflect.ValueOf(10)); err != nil {
		t.Fatal(err)
	}
	if err := members[1].Set(rv, reflect.ValueOf(20)); err != nil {
		t.Fatal(err)
	}
	if v.InnerID.ID != 10 || v.ID != 20 {
		t.Errorf("setters crossed: %+v", v)
	}
	if m, ok := d.Member("ID"); !ok || len(m.Index) != 1 {
		t.Errorf("Member(ID) should select the outer field, got %v", m)
	}
	if _, ok := c.Get(reflect.TypeFor[tiedX]()).Member("X"); ok {
		t.Errorf("Member(X) is ambiguous")
	}
}

type embedPtr struct {
	*Base
	Name string
}

func TestAccessors(t *testing.T) {
	c := NewCache()
	d := c.Get(reflect.TypeFor[embedPtr]())
	var v embedPtr
	rv := reflect.ValueOf(&v).Elem()

	id, _ := d.Member("ID")
	if _, ok := id.Get(rv); ok {
		t.Errorf("Get through nil embedded pointer should report !ok")
	}
	if err := id.Set(rv, reflect.ValueOf(7)); err != nil {
		t.Fatal(err)
	}
	if v.Base == nil || v.ID != 7 {
		t.Errorf("Set did not allocate embedded pointer: %+v", v)
	}
	got, ok := id.Get(rv)
	if !ok || got.Int() != 7 {
		t.Errorf("Get() = %v, %v", got, ok)
	}

	a1, err := d.Accessor("ID")
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := d.Accessor("ID")
	if a1 != a2 {
		t.Errorf("accessor not memoized")
	}
	if s, _ := d.Accessor("ID", reflect.TypeFor[int]()); s == a1 || s.Kind != Setter {
		t.Errorf("setter must be keyed by signature")
	}
	if _, err := d.Accessor("ID", reflect.TypeFor[string]()); err == nil {
		t.Errorf("expected error assigning string to int member")
	}
}

type counter struct{ n int }

func (c *counter) Add(k int) int { c.n += k; return c.n }
func (c counter) Value() int     { return c.n }

func TestMethodAccessor(t *testing.T) {
	c := NewCache()
	d := c.Get(reflect.TypeFor[counter]())
	add, err := d.Accessor("Add", reflect.TypeFor[int]())
	if err != nil {
		t.Fatal(err)
	}
	if add.Kind != Method {
		t.Errorf("Kind = %s", add.Kind)
	}
	var x counter
	rv := reflect.ValueOf(&x).Elem()
	add.Call(rv, reflect.ValueOf(2))
	out := add.Call(rv, reflect.ValueOf(3))
	if x.n != 5 || out[0].Int() != 5 {
		t.Errorf("n = %d, out = %v", x.n, out[0])
	}
	val, err := d.Accessor("Value")
	if err != nil {
		t.Fatal(err)
	}
	if got := val.Call(rv)[0].Int(); got != 5 {
		t.Errorf("Value() = %d", got)
	}
	if _, err := d.Accessor("Add", reflect.TypeFor[string]()); err == nil {
		t.Errorf("expected signature mismatch error")
	}
	if _, err := d.Accessor("Missing"); err == nil {
		t.Errorf("expected missing method error")
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		want    map[string]string
		wantErr bool
	}{
		{"", map[string]string{}, false},
		{"name=id,omit", map[string]string{"name": "id", "omit": ""}, false},
		{"name='a b' allowExtra", map[string]string{"name": "a b", "allowExtra": ""}, false},
		{"=x", nil, true},
		{"name='open", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseTag(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTag(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseTag(%q) mismatch (-want +got):\n%s", tt.tag, diff)
			}
		})
	}
}
