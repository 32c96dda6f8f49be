// Package spin implements the wheel: choosing a random shortlist entry,
// computing the rotation that lands the pointer on it, and deciding when a
// movie has won.
//
// Segments are laid out clockwise from the pointer in shortlist order, each
// 360/n degrees wide. Rotation is cumulative and only ever grows, so the UI
// can animate from the previous angle to Result.Rotation with Ease.
//
// Win modes:
//
//   - single: the first recorded win decides
//   - multi: the first movie to reach winsNeeded decides
//
// The store keeps mode and threshold exactly as the user set them; this
// package is where they are interpreted.
package spin
