// Package git provides a driven.RepositoryCloner backed by the git CLI.
//
// Every operation shells out to git with "-C <repo>" so no process-wide
// working directory is changed. Remote credentials are embedded in the
// clone URL and redacted from errors.
package git
