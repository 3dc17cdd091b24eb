// Package repositories implements create, read, update and delete for the three roster collections and keeps
// their cross-references consistent.
//
// Each repository works over a [store.Store] snapshot: it reads the collection, builds the mutated copy and saves
// it back, so an operation either persists fully or leaves memory untouched.
//
// Key Implementations:
//   - [StudentRepository] : students and their names
//   - [CourseRepository] : courses, credits, and pruning enrollments when a course is deleted
//   - [InstructorRepository] : instructors, and pruning course assignments when an instructor is deleted
//   - [Enrollments] : enrolling and dropping students, assigning instructors to courses
//
// The generic helpers [NextID], [FindByID] and [RemoveByID] operate on any [models.Record] slice.
// IDs are allocated as max+1 and never below the store's high-water mark, so an ID is not reused within a run.
package repositories
