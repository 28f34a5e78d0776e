// Package ui is a terminal navigation engine built on Bubble Tea.
//
// It implements engine.Engine over three layers:
//   - Root: the container set by SetRoot (a stack, sheet or single component)
//   - Modals: containers presented by ShowModal, topmost last
//   - Overlays: single screens drawn above everything, topmost receives keys first
//
// Screens are created by factories registered by name in a Registry. Model
// renders the tree and maps esc to the navigation command for the focused layer.
package ui
