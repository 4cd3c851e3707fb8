package bind

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/signadot/docmap/node"
)

type Foo struct {
	Name string
	Tags []string
}

func TestScenarioFoo(t *testing.T) {
	e := New(MemberNaming(LowerCamel))
	doc := node.Object("Foo",
		node.Scalar("name", "x"),
		node.Array("tags", node.Scalar("String", "a"), node.Scalar("String", "b")),
	)
	var foo Foo
	if err := e.Deserialize(doc, &foo); err != nil {
		t.Fatal(err)
	}
	want := Foo{Name: "x", Tags: []string{"a", "b"}}
	if diff := cmp.Diff(want, foo); diff != "" {
		t.Fatalf("Deserialize() mismatch (-want +got):\n%s", diff)
	}

	out := node.NewRoot("test", node.ObjectKind, "doc", 0, nil)
	if err := e.Serialize(foo, out); err != nil {
		t.Fatal(err)
	}
	if !node.Equal(doc, out) {
		t.Errorf("re-serialized document differs from input")
	}
}

type color int

func (c color) String() string { return "color" + strconv.Itoa(int(c)) }

type level5 struct {
	Score float64
	Wait  time.Duration
	C     complex128
}

type level4 struct {
	Items []level5
	Flag  bool
}

type level3 struct {
	ByName map[string]level4
	Ptr    *int
}

type level2 struct {
	Inner level3
	Bytes []byte
	Color color
}

type level1 struct {
	Name   string
	Levels []level2
	Opt    *level3
	Arr    [2]int8
	U      uint16
	When   time.Time
	Counts map[int]string
}

func sampleLevel1() level1 {
	seven := 7
	zero := 0
	return level1{
		Name: "root",
		Levels: []level2{
			{
				Inner: level3{
					ByName: map[string]level4{
						"b": {Items: []level5{{Score: 0.1, Wait: 1500 * time.Millisecond, C: complex(1, -2)}}, Flag: true},
						"a": {Items: []level5{{Score: -3e10}, {Score: 2}}},
					},
					Ptr: &seven,
				},
				Bytes: []byte("hello"),
				Color: 3,
			},
			{Inner: level3{Ptr: &zero}},
		},
		Opt:    &level3{ByName: map[string]level4{"z": {}}},
		Arr:    [2]int8{-1, 1},
		U:      65535,
		When:   time.Date(2024, 2, 29, 12, 30, 0, 0, time.UTC),
		Counts: map[int]string{10: "ten", 2: "two"},
	}
}

func TestRoundTripDepth5(t *testing.T) {
	e := New()
	in := sampleLevel1()
	root := node.NewRoot("test", node.ObjectKind, "doc", 0, nil)
	if err := e.Serialize(in, root); err != nil {
		t.Fatal(err)
	}
	if name, _ := root.Name(); name != "level1" {
		t.Errorf("root name = %q", name)
	}
	var out level1
	if err := e.Deserialize(root, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripAnonymousRoot(t *testing.T) {
	e := New(TypeNaming(UpperCamel), MemberNaming(SnakeCase))
	in := sampleLevel1()
	root := node.New(node.ValueKind)
	if err := e.Serialize(&in, root); err != nil {
		t.Fatal(err)
	}
	if c, _ := root.Get("levels"); c == nil {
		t.Fatalf("expected snake case member names")
	}
	out, err := Decode[*level1](e, root)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	e := New()
	in := sampleLevel1()
	a := node.NewRoot("test", node.ObjectKind, "doc", 0, nil)
	b := node.NewRoot("test", node.ObjectKind, "doc", 0, nil)
	if err := e.Serialize(in, a); err != nil {
		t.Fatal(err)
	}
	if err := e.Serialize(in, b); err != nil {
		t.Fatal(err)
	}
	if !node.Equal(a, b) {
		t.Fatalf("serializing twice produced different documents")
	}
	counts, _ := a.Get("Counts")
	children, _ := counts.Children()
	var names []string
	for _, c := range children {
		name, _ := c.Name()
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{"10", "2"}, names); diff != "" {
		t.Errorf("dictionary key order mismatch (-want +got):\n%s", diff)
	}
}

func TestListOrder(t *testing.T) {
	for _, n := range []int{0, 1, 50} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			e := New()
			in := make([]string, n)
			for i := range in {
				in[i] = fmt.Sprintf("item-%02d", n-i)
			}
			root := node.NewRoot("test", node.ArrayKind, "doc", 0, nil)
			if err := e.Serialize(in, root); err != nil {
				t.Fatal(err)
			}
			if name, _ := root.Name(); name != "ArrayOfString" {
				t.Errorf("root name = %q", name)
			}
			children, err := root.Children()
			if err != nil {
				t.Fatal(err)
			}
			if len(children) != n {
				t.Fatalf("got %d children, want %d", len(children), n)
			}
			for i, c := range children {
				if v, _ := c.Value(); v != in[i] {
					t.Fatalf("child %d = %q, want %q", i, v, in[i])
				}
			}
			var out []string
			if err := e.Deserialize(root, &out); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeserializeKeepsDestinationOnError(t *testing.T) {
	e := New(MemberNaming(LowerCamel))
	doc := node.Object("Foo",
		node.Scalar("name", "changed"),
		node.Scalar("bogus", "1"),
	)
	foo := Foo{Name: "keep"}
	if err := e.Deserialize(doc, &foo); err == nil {
		t.Fatal("expected error")
	}
	if foo.Name != "keep" {
		t.Errorf("destination was modified: %+v", foo)
	}
}

func TestDeserializeDestination(t *testing.T) {
	e := New()
	var foo Foo
	for _, v := range []any{nil, foo, (*Foo)(nil)} {
		if err := e.Deserialize(node.Object("Foo"), v); err == nil {
			t.Errorf("Deserialize(%T) expected error", v)
		}
	}
}

type Audit struct {
	ID int
}

type record struct {
	Audit
	ID int `docmap:"name=outerId"`
}

func TestRenamedFieldKeepsPromotedField(t *testing.T) {
	e := New()
	in := record{Audit: Audit{ID: 1}, ID: 2}
	root := node.NewRoot("test", node.ObjectKind, "doc", 0, nil)
	if err := e.Serialize(in, root); err != nil {
		t.Fatal(err)
	}
	want := node.Object("record", node.Scalar("ID", "1"), node.Scalar("outerId", "2"))
	if !node.Equal(want, root) {
		t.Errorf("unexpected document for shadowed field names")
	}
	var out record
	if err := e.Deserialize(root, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
