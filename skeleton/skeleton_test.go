package skeleton

import (
	"testing"
)

func TestLookup(t *testing.T) {
	pelvis, ok := Lookup("sk_pelvis")
	if !ok {
		t.Fatal("sk_pelvis missing from reference skeleton")
	}
	if pelvis.Parent != "" {
		t.Errorf("sk_pelvis parent %q; expected root", pelvis.Parent)
	}
	if y := pelvis.Global.At(1, 3); y != 0.9695 {
		t.Errorf("sk_pelvis height %v; expected 0.9695", y)
	}

	spine, ok := Lookup("sk_spine")
	if !ok {
		t.Fatal("sk_spine missing from reference skeleton")
	}
	if spine.Parent != "sk_pelvis" {
		t.Errorf("sk_spine parent %q; expected sk_pelvis", spine.Parent)
	}

	if _, ok := Lookup("sk_tail"); ok {
		t.Error("unexpected sk_tail in reference skeleton")
	}
}

func TestParentsAreClosed(t *testing.T) {
	// Every declared parent must itself be a bone of the dataset.
	for _, name := range Names() {
		bone, _ := Lookup(name)
		if bone.Parent == "" {
			continue
		}
		if _, ok := Lookup(bone.Parent); !ok {
			t.Errorf("bone %q references unknown parent %q", name, bone.Parent)
		}
	}
}

func TestCoreBonesPresent(t *testing.T) {
	for _, name := range []string{
		"sk_pelvis", "sk_spine", "sk_chest", "sk_neck", "sk_head",
		"sk_clavicle_l", "sk_upperarm_l", "sk_forearm_l", "sk_hand_l",
		"sk_clavicle_r", "sk_upperarm_r", "sk_forearm_r", "sk_hand_r",
		"sk_thigh_l", "sk_calf_l", "sk_foot_l",
		"sk_thigh_r", "sk_calf_r", "sk_foot_r",
	} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("bone %q missing from reference skeleton", name)
		}
	}
}
