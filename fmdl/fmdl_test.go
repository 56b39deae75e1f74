package fmdl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoundingBoxExtend(t *testing.T) {
	box := BoxAround(mgl32.Vec3{1, 0, 0})
	box = box.Extend(mgl32.Vec3{-1, 2, 5})
	box = box.Extend(mgl32.Vec3{0, 1, 3})

	if box.Min != (mgl32.Vec4{-1, 0, 0, 1}) {
		t.Errorf("min %v; expected (-1,0,0,1)", box.Min)
	}
	if box.Max != (mgl32.Vec4{1, 2, 5, 1}) {
		t.Errorf("max %v; expected (1,2,5,1)", box.Max)
	}
}

func TestBoundingBoxUnionContains(t *testing.T) {
	a := BoxAround(mgl32.Vec3{0, 0, 0}).Extend(mgl32.Vec3{1, 1, 1})
	b := BoxAround(mgl32.Vec3{-1, 0, 0}).Extend(mgl32.Vec3{0, 2, 0})

	u := a.Union(b)
	if !u.Contains(a) || !u.Contains(b) {
		t.Errorf("union %v does not contain both inputs", u)
	}
	if a.Contains(b) {
		t.Errorf("box %v unexpectedly contains %v", a, b)
	}
}

func TestTruncateAffine(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	out := TruncateAffine(m)

	expected := [12]float32{
		1, 0, 0, 1,
		0, 1, 0, 2,
		0, 0, 1, 3,
	}
	if out != expected {
		t.Errorf("truncated %v; expected %v", out, expected)
	}
}

func TestMarkers(t *testing.T) {
	var m Markers
	if m.Has(ExtAntiBlur) {
		t.Error("nil markers reported a marker")
	}
	m = m.Add(ExtAntiBlur)
	m = m.Add(ExtAntiBlur)
	if !m.Has(ExtAntiBlur) || len(m) != 1 {
		t.Errorf("markers %v; expected single anti-blur entry", m)
	}
}

func TestBoneIndex(t *testing.T) {
	m := &Model{Bones: []*Bone{{Name: "sk_pelvis"}, {Name: "sk_spine"}}}
	if i := m.BoneIndex("sk_spine"); i != 1 {
		t.Errorf("BoneIndex(sk_spine)=%d; expected 1", i)
	}
	if i := m.BoneIndex("sk_tail"); i != -1 {
		t.Errorf("BoneIndex(sk_tail)=%d; expected -1", i)
	}
}
