/*
Package session serializes access to stored traces.

A Manager guards each trace ID with an in-process mutex and, when a
distributed locker is configured, a lock shared by every replica, so
read-modify-write cycles such as listener edits never interleave.
*/
package session
