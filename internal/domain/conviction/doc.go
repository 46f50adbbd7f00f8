// Package conviction holds the pure scoring functions behind a user's conviction score for a
// career: RIASEC interest similarity, importance-weighted skill match, education gap with a
// knowledge blend, and saturating engagement. None of them perform I/O.
package conviction
