/*
Package status owns every byte assetrc writes and remembers what it wrote.

	            +-------------+
	            |   Manager   |
	            | (outputs)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+-----+             +-----+-----+
	|  Outputs  |             | Lock file |
	|  on disk  |             | .assetrc  |
	|           |             |   .lock   |
	+-----------+             +-----------+

🎯 Purpose:
- Writes outputs atomically (temp file + rename)
- Classifies each output as new, modified or unchanged by content
- Records the producing app, task, sources and checksum in the lock file
- Finds orphans: outputs of an earlier build the current run did not produce

🔄 Flow:
1. LoadLock reads the previous build record
2. PutOutput classifies and (unless dry run) writes each output
3. Orphans lists what the previous build left behind; RemoveOutput deletes it
4. SaveLock replaces the record for the apps that were built

A dry-run manager goes through the same steps without touching the disk,
which is how the status command works out whether a build is needed.

User-facing lines are produced by FileFormatter implementations and by
UserLogger, which prints through pterm and mirrors to zerolog.
*/
package status
