// Package writer implements the MongoDB persistence sink.
//
// Each persist cycle:
//   - Inserts one document per projected product into the records collection
//   - Increments the freshness counter in the config collection
//
// Inserts are independent; a failure partway through leaves earlier documents
// committed. Transactional mode wraps both steps in one multi-document
// transaction instead.
package writer
