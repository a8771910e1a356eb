// Package testutil provides helpers for testing terminal UI models.
//
// Drive a model with key presses and inspect the rendered view without colors:
//
//	model, _ = testutil.SimulateKeyPress(model, "enter")
//	view := testutil.StripANSI(model.View())
//	testutil.AssertContainsInOrder(t, view, []string{"Compliance", "Yes"})
package testutil
