// Package naming derives the EKHO filename for a timesheet PDF from its
// extracted text.
//
// The derivation is a chain of small pure functions:
//
//	raw text -> ParseName (Dictionary, Normalize) -> canonical name -> ShortCode
//	raw text -> ExtractDates -> sorted dates
//	canonical name + dates -> Compose -> filename
//
// Derive runs the whole chain over a document's text and reports which
// document convention was missing when it cannot.
package naming
