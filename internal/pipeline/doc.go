// Package pipeline runs the batch: for every PDF in a folder it unlocks the
// file, strips the certification page, extracts the header text, derives
// the EKHO filename and renames the file.
//
// Documents are processed one at a time. A failure is recorded in that
// document's Result and the run moves on; only problems with the folder
// itself abort Run.
package pipeline
