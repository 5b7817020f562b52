// Package listview provides a keyboard-driven cursor over a short list of
// rows for Bubble Tea views. Only the rows that fit the viewport height are
// rendered; the cursor row is always among them.
package listview
