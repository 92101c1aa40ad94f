package model

import (
	"testing"

	"github.com/boynton/data"
	"github.com/boynton/smithy"
	"github.com/google/go-cmp/cmp"
)

func requiredTrait() *data.Object {
	return data.AsObject(map[string]interface{}{"smithy.api#required": map[string]interface{}{}})
}

// newStructureAST builds a one-shape smithy.AST whose structure member
// map is populated in the given insertion order, so tests can assert
// fromSmithyAST's output doesn't depend on that order.
func newStructureAST(insertOrder []string, required map[string]bool) *smithy.AST {
	members := smithy.NewMembers()
	for _, name := range insertOrder {
		m := &smithy.Member{Target: "smithy.api#String"}
		if required[name] {
			m.Traits = requiredTrait()
		}
		members.Put(name, m)
	}
	shapes := smithy.NewShapes()
	shapes.Put("com.example.svc#Doc", &smithy.Shape{Type: "structure", Members: members})
	return &smithy.AST{Smithy: "2.0", Shapes: shapes}
}

func TestFromSmithyASTSortsStructureMemberOrder(t *testing.T) {
	ast := newStructureAST([]string{"Zebra", "Apple", "Mango"}, map[string]bool{"Apple": true})

	def, err := fromSmithyAST("example", ast)
	if err != nil {
		t.Fatalf("fromSmithyAST: %v", err)
	}
	shape, ok := def.GetShape("com.example.svc#Doc")
	if !ok {
		t.Fatal("fromSmithyAST did not add com.example.svc#Doc")
	}
	want := []string{"Apple", "Mango", "Zebra"}
	if diff := cmp.Diff(want, shape.MemberOrder); diff != "" {
		t.Errorf("MemberOrder mismatch (-want +got):\n%s", diff)
	}
	if !shape.Required["Apple"] {
		t.Error("Apple should be marked required per its smithy.api#required trait")
	}
	if shape.Required["Zebra"] || shape.Required["Mango"] {
		t.Error("Zebra/Mango should not be marked required")
	}
}

func TestFromSmithyASTMemberOrderIsIndependentOfInsertionOrder(t *testing.T) {
	astA := newStructureAST([]string{"Zebra", "Apple", "Mango"}, nil)
	astB := newStructureAST([]string{"Mango", "Zebra", "Apple"}, nil)

	defA, err := fromSmithyAST("example", astA)
	if err != nil {
		t.Fatalf("fromSmithyAST(astA): %v", err)
	}
	defB, err := fromSmithyAST("example", astB)
	if err != nil {
		t.Fatalf("fromSmithyAST(astB): %v", err)
	}
	shapeA, _ := defA.GetShape("com.example.svc#Doc")
	shapeB, _ := defB.GetShape("com.example.svc#Doc")
	if diff := cmp.Diff(shapeA.MemberOrder, shapeB.MemberOrder); diff != "" {
		t.Errorf("two ASTs differing only in member declaration order produced different MemberOrder (-A +B):\n%s", diff)
	}
}

func TestFromSmithyASTProjectsListMapAndOperationShapes(t *testing.T) {
	shapes := smithy.NewShapes()
	shapes.Put("com.example.svc#ItemList", &smithy.Shape{
		Type:   "list",
		Member: &smithy.Member{Target: "com.example.svc#Item"},
	})
	shapes.Put("com.example.svc#TagMap", &smithy.Shape{
		Type:  "map",
		Key:   &smithy.Member{Target: "smithy.api#String"},
		Value: &smithy.Member{Target: "smithy.api#String"},
	})
	shapes.Put("com.example.svc#GetItem", &smithy.Shape{
		Type:   "operation",
		Input:  &smithy.ShapeRef{Target: "com.example.svc#GetItemInput"},
		Output: &smithy.ShapeRef{Target: "com.example.svc#GetItemResult"},
	})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}

	def, err := fromSmithyAST("example", ast)
	if err != nil {
		t.Fatalf("fromSmithyAST: %v", err)
	}

	list, ok := def.GetShape("com.example.svc#ItemList")
	if !ok || list.Type != ShapeList || list.ListMember == nil || list.ListMember.Shape != "com.example.svc#Item" {
		t.Fatalf("ItemList shape = %+v, want a list member targeting com.example.svc#Item", list)
	}
	tagMap, ok := def.GetShape("com.example.svc#TagMap")
	if !ok || tagMap.Type != ShapeMap || tagMap.MapKey == nil || tagMap.MapValue == nil {
		t.Fatalf("TagMap shape = %+v, want a map with key and value", tagMap)
	}
	op, ok := def.GetOperation("com.example.svc#GetItem")
	if !ok || op.Input == nil || op.Input.Shape != "com.example.svc#GetItemInput" || op.Output == nil || op.Output.Shape != "com.example.svc#GetItemResult" {
		t.Fatalf("GetItem operation = %+v, want Input/Output targeting GetItemInput/GetItemResult", op)
	}
}

func TestFromSmithyASTWithNoShapesReturnsEmptyDefinition(t *testing.T) {
	def, err := fromSmithyAST("example", &smithy.AST{Smithy: "2.0"})
	if err != nil {
		t.Fatalf("fromSmithyAST: %v", err)
	}
	if len(def.GetShapes()) != 0 {
		t.Errorf("GetShapes() = %v, want empty for an AST with a nil Shapes map", def.GetShapes())
	}
}
