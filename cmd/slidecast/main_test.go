package main

import "testing"

func TestRootCommandSilencesUsageOnRuntimeErrors(t *testing.T) {
	// A failed conversion is a runtime error, not a usage mistake; the
	// help text must not drown out the actual error message.
	if !rootCmd.SilenceUsage {
		t.Error("rootCmd.SilenceUsage = false, runtime failures would print the usage block")
	}
}
