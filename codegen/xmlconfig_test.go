package codegen

import (
	"strings"
	"testing"

	"github.com/kcoder/clientgen/model"
)

func newXMLConfigFixture() *model.InMemoryDefinition {
	def := model.NewInMemoryDefinition("example")
	def.AddShape(&model.Shape{
		Name: "com.example.svc#Document",
		Type: model.ShapeStructure,
		Members: map[string]*model.Member{
			"Id":    {Shape: "base#string", XMLAttribute: true, LocationName: "id"},
			"Title": {Shape: "base#string"},
			"Tags":  {Shape: "com.example.svc#TagList"},
		},
		MemberOrder: []string{"Id", "Title", "Tags"},
		Required:    map[string]bool{"Id": true, "Title": true},
	})
	def.AddShape(&model.Shape{
		Name:       "com.example.svc#TagList",
		Type:       model.ShapeList,
		ListMember: &model.Member{Shape: "base#string", LocationName: "Tag"},
	})
	return def
}

func TestPruneXMLConfigWalksStructureAndListMembers(t *testing.T) {
	def := newXMLConfigFixture()
	payloadMember := &model.Member{Shape: "com.example.svc#Document"}
	cfg, err := PruneXMLConfig(def, "com.example.svc#Document", payloadMember)
	if err != nil {
		t.Fatalf("PruneXMLConfig: %v", err)
	}
	if cfg.Root.Type != "com.example.svc#Document" || cfg.Root.XMLName != "Document" {
		t.Errorf("Root = %+v, want Type=com.example.svc#Document XMLName=Document", cfg.Root)
	}

	names := map[string]xmlShapeConfig{}
	for _, s := range cfg.Shapes {
		names[s.Name] = s
	}
	doc, ok := names["com.example.svc#Document"]
	if !ok || doc.Type != "structure" || len(doc.Members) != 3 {
		t.Fatalf("Document shape config = %+v, want a 3-member structure", doc)
	}
	tagList, ok := names["com.example.svc#TagList"]
	if !ok || tagList.Type != "list" || tagList.Member == nil || tagList.Member.LocationName != "Tag" {
		t.Fatalf("TagList shape config = %+v, want a list with element locationName Tag", tagList)
	}
	if _, ok := names["base#string"]; !ok {
		t.Fatal("PruneXMLConfig did not include the base#string scalar reached via Document's members")
	}
}

func TestPruneXMLConfigUsesPayloadLocationNameAndNamespace(t *testing.T) {
	def := newXMLConfigFixture()
	payloadMember := &model.Member{Shape: "com.example.svc#Document", LocationName: "Doc", XMLNamespace: &model.XMLNamespace{URI: "http://example.com/ns"}}
	cfg, err := PruneXMLConfig(def, "com.example.svc#Document", payloadMember)
	if err != nil {
		t.Fatalf("PruneXMLConfig: %v", err)
	}
	if cfg.Root.XMLName != "Doc" || cfg.Root.URI != "http://example.com/ns" {
		t.Errorf("Root = %+v, want XMLName=Doc URI=http://example.com/ns", cfg.Root)
	}
}

func TestXMLConfigGoLiteralProducesDeterministicSource(t *testing.T) {
	def := newXMLConfigFixture()
	payloadMember := &model.Member{Shape: "com.example.svc#Document"}
	cfg, err := PruneXMLConfig(def, "com.example.svc#Document", payloadMember)
	if err != nil {
		t.Fatalf("PruneXMLConfig: %v", err)
	}
	got := cfg.GoLiteral()
	if !strings.Contains(got, "sdkruntime.NewXMLBuilder(") {
		t.Errorf("GoLiteral() = %q, want a sdkruntime.NewXMLBuilder call", got)
	}
	if !strings.Contains(got, `"com.example.svc#TagList": sdkruntime.XMLShapeConfig{Type: "list"`) {
		t.Errorf("GoLiteral() = %q, missing the TagList list config", got)
	}

	cfg2, err := PruneXMLConfig(def, "com.example.svc#Document", payloadMember)
	if err != nil {
		t.Fatalf("PruneXMLConfig (second run): %v", err)
	}
	if got2 := cfg2.GoLiteral(); got2 != got {
		t.Errorf("GoLiteral() is not deterministic across runs:\n%s\nvs\n%s", got, got2)
	}
}

func TestPruneXMLConfigTerminatesOnCyclicShapes(t *testing.T) {
	def := model.NewInMemoryDefinition("example")
	def.AddShape(&model.Shape{
		Name:        "com.example.svc#Node",
		Type:        model.ShapeStructure,
		Members:     map[string]*model.Member{"Child": {Shape: "com.example.svc#Node"}},
		MemberOrder: []string{"Child"},
	})
	payloadMember := &model.Member{Shape: "com.example.svc#Node"}
	cfg, err := PruneXMLConfig(def, "com.example.svc#Node", payloadMember)
	if err != nil {
		t.Fatalf("PruneXMLConfig: %v", err)
	}
	if len(cfg.Shapes) != 1 {
		t.Fatalf("PruneXMLConfig on a self-referential shape produced %d shape entries, want exactly 1", len(cfg.Shapes))
	}
}
