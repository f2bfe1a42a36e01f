// Package async provides utilities for parallel task execution with
// error collection.
//
// [RunParallel] starts every task at once; [RunLimited] caps the number of
// tasks in flight. Both wait for all tasks and join their errors. Assembly
// publishing uses RunLimited to upload files without opening one connection
// per file.
package async
