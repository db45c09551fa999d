package workspace

import "testing"

func TestViewSetAddAndFindByKey(t *testing.T) {
	vs := &ViewSet{}
	v := vs.AddView(ViewSystemContext, "ctx")
	v.Title = "System Context"

	found, ok := vs.FindByKey("ctx")
	if !ok || found != v {
		t.Fatalf("FindByKey(%q) = %v, %v, want the view just added", "ctx", found, ok)
	}
	if _, ok := vs.FindByKey("missing"); ok {
		t.Errorf("FindByKey(missing) should report not found")
	}
}

func TestViewIncludeExclude(t *testing.T) {
	v := &View{Kind: ViewSystemContext, Key: "ctx"}
	v.AddInclude("*")
	v.AddExclude("softwareSystem.tag==Deprecated")
	if len(v.Include) != 1 || v.Include[0] != "*" {
		t.Errorf("Include = %v, want [\"*\"]", v.Include)
	}
	if len(v.Exclude) != 1 {
		t.Errorf("Exclude = %v, want one entry", v.Exclude)
	}
}

func TestBeginAnimationStepAppendsAndReturnsLast(t *testing.T) {
	v := &View{Kind: ViewSystemContext, Key: "ctx"}
	step1 := v.BeginAnimationStep()
	step1.Elements = append(step1.Elements, "a")
	step2 := v.BeginAnimationStep()
	step2.Elements = append(step2.Elements, "b")

	if len(v.Animations) != 2 {
		t.Fatalf("expected 2 animation steps, got %d", len(v.Animations))
	}
	if len(v.Animations[0].Elements) != 1 || v.Animations[0].Elements[0] != "a" {
		t.Errorf("first animation step = %+v, want Elements=[a]", v.Animations[0])
	}
	if len(v.Animations[1].Elements) != 1 || v.Animations[1].Elements[0] != "b" {
		t.Errorf("second animation step = %+v, want Elements=[b]", v.Animations[1])
	}
}
