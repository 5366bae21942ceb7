package supervisor

// Terminator kills a process and all of its descendants, addressed by pid
// so agents launched by other shell processes can be torn down too. The
// launched agent spawns worker subprocesses, so a plain "kill parent" would
// orphan them.
//
// Implementations are best-effort: the supervisor always follows a tree
// terminate with a direct kill and a wait, so a partial tree-kill failure
// never leaves a live handle behind.
type Terminator interface {
	Terminate(pid int) error
}
