// Package media uploads images for profiles and waves. An Uploader checks
// that a file is an image, enforces the image count of its slot, scales the
// image to the slot size, re-encodes it as JPEG and hands it to a Host, which
// returns the public URL.
package media
