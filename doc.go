// Package watermark removes the fixed semi-transparent logo watermark from
// images by reverse alpha blending and writes the cleaned result twice: as an
// RGBA PNG and as a JPEG flattened onto white.
//
// The watermark is modelled as a solid white overlay composited with a
// per-pixel opacity taken from a reference mask (mask_48.png or mask_96.png).
// The mask brightness in its brightest channel is the opacity. Placement is
// anchored to the bottom-right corner with fixed margins.
package watermark
