// Package session owns the per-user watermarking state: the settings store
// keyed by Telegram user ID and the controller that interprets incoming
// events against it. Records live for the process lifetime; there is no
// persistence and no deletion path.
package session
