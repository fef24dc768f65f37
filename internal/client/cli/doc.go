// Package cli provides the interactive blogauth command-line client.
//
// Commands: register, login, forgot (request a reset e-mail), reset (set a
// new password from the link's id and token), me, refresh, logout.
// A background watcher pings the server and shows online/offline in the
// prompt. Tokens live only in memory.
package cli
