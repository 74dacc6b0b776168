package main

import "testing"

func TestSettingsSetAndShow(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, env, "", "settings", "set", "--title", "STUDIO NORTH", "--tagline", "Selected work 2020-2026")
	if err != nil {
		t.Fatalf("settings set: %v", err)
	}
	requireContains(t, out, "Settings updated")

	out, _, err = runCLI(t, env, "", "settings", "show")
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	requireContains(t, out, "STUDIO NORTH")
	requireContains(t, out, "Selected work 2020-2026")
}

func TestSettingsSetRequiresAFlag(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := runCLI(t, env, "", "settings", "set")
	if err == nil {
		t.Fatal("expected bare settings set to fail")
	}
	requireContains(t, err.Error(), "nothing to set")
}

func TestSettingsSetKeepsOtherField(t *testing.T) {
	env := setupCLITestEnv(t, "")

	if _, _, err := runCLI(t, env, "", "settings", "set", "--title", "FIRST", "--tagline", "keep me"); err != nil {
		t.Fatalf("settings set: %v", err)
	}
	if _, _, err := runCLI(t, env, "", "settings", "set", "--title", "SECOND"); err != nil {
		t.Fatalf("settings set title only: %v", err)
	}

	out, _, err := runCLI(t, env, "", "settings", "show")
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	requireContains(t, out, "SECOND")
	requireContains(t, out, "keep me")
}
