package convert

import (
	"math"
	"testing"

	"pesconv/model"
)

func TestConvertBonesDeduplicatesByName(t *testing.T) {
	pelvis := &model.Bone{Name: "sk_pelvis"}
	spine := &model.Bone{Name: "sk_spine"}
	pelvisAgain := &model.Bone{Name: "sk_pelvis"}

	bones, boneMap := convertBones([]*model.Bone{pelvis, spine, pelvisAgain})

	if len(bones) != 2 {
		t.Fatalf("got %d bones, expected 2", len(bones))
	}
	if bones[0].Name != "sk_pelvis" || bones[1].Name != "sk_spine" {
		t.Errorf("bone order %q,%q; expected sk_pelvis,sk_spine", bones[0].Name, bones[1].Name)
	}
	if boneMap[pelvis] != 0 || boneMap[pelvisAgain] != 0 || boneMap[spine] != 1 {
		t.Errorf("bone map %v,%v,%v; expected 0,0,1", boneMap[pelvis], boneMap[pelvisAgain], boneMap[spine])
	}
}

func TestConvertBonesParentLinks(t *testing.T) {
	// sk_spine's parent sk_pelvis is present, sk_head's parent sk_neck is not.
	src := []*model.Bone{
		{Name: "sk_pelvis"},
		{Name: "sk_spine"},
		{Name: "sk_head"},
	}

	bones, _ := convertBones(src)

	if bones[1].Parent != "sk_pelvis" {
		t.Errorf("sk_spine parent %q; expected sk_pelvis", bones[1].Parent)
	}
	if len(bones[0].Children) != 1 || bones[0].Children[0] != "sk_spine" {
		t.Errorf("sk_pelvis children %v; expected [sk_spine]", bones[0].Children)
	}
	if bones[2].Parent != "" {
		t.Errorf("sk_head parent %q; expected root", bones[2].Parent)
	}
}

func TestConvertBonesUnknownBoneIsIdentityRoot(t *testing.T) {
	bones, _ := convertBones([]*model.Bone{{Name: "attachment_ball"}})

	bone := bones[0]
	if bone.Parent != "" {
		t.Errorf("unknown bone parent %q; expected root", bone.Parent)
	}
	for i, v := range bone.Matrix {
		expected := float32(0)
		if i == 0 || i == 5 || i == 10 {
			expected = 1
		}
		if v != expected {
			t.Errorf("matrix[%d]=%v; expected identity", i, v)
		}
	}
}

func TestConvertBonesReferenceTransform(t *testing.T) {
	bones, _ := convertBones([]*model.Bone{{Name: "sk_pelvis"}})

	bone := bones[0]
	// The pelvis bind pose is a pure translation, so the local transform is
	// its negation.
	approx := func(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-5 }

	if !approx(bone.GlobalPosition[1], 0.9695) || bone.GlobalPosition[3] != 1 {
		t.Errorf("global position %v; expected y=0.9695 w=1", bone.GlobalPosition)
	}
	if !approx(bone.LocalPosition[1], -0.9695) {
		t.Errorf("local position %v; expected y=-0.9695", bone.LocalPosition)
	}
	if !approx(bone.Matrix[7], -0.9695) {
		t.Errorf("matrix translation %v; expected -0.9695", bone.Matrix[7])
	}
}
