// Package models defines the academic records kept by roster and the identifier type they share.
//
// Three collections exist:
//   - [Student] : a person enrolled in zero or more courses
//   - [Course] : an offering with a credit value and assigned instructors
//   - [Instructor] : teaching staff with a department
//
// Cross-references ([Student.Courses], [Course.Instructors]) hold [ID] values of records in the other collections.
// Every entity implements [Record], which is what the generic allocator and locator in package repositories operate on.
//
// [ID] is always an integer in memory. Its decoders accept numbers and numeric strings so collections written with
// mixed representations still load; anything else decodes to zero, the "no ID" value.
package models
