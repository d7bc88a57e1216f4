// Package watcher uploads files dropped into a watched directory.
// New files are debounced until writes settle, then sent through the
// document service, which auto-assigns them to the active class.
package watcher
