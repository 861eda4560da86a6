// Package form is a data-driven multi-step form engine.
//
// A Schema lists steps and the fields of each step; the field definitions
// carry labels, kinds, options and validation rules. Schemas exist per role
// for profiles and for waves, and once each for login and registration. A
// Form walks a schema: it validates only the current step on Next, keeps
// editable lists and tag sets alongside the plain values, and on Submit
// merges everything into a Payload handed to a SubmitFunc.
package form
