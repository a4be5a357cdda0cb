/*
Package operation runs the asset pipeline against a resolved configuration.

	+-------------+
	|  Pipeline   |
	| (immutable) |
	+------+------+
	       |
	+------+------+       +-------------+
	|  Operator   |------>|   Runner    |
	| build/clean |       | sync/async  |
	| status      |       +------+------+
	+------+------+              |
	       |          +----------+----------+
	       |          |          |          |
	       |       build      clean      vendor
	       |       (per app)  (per app)  (per source)
	       v
	+-------------+
	|   Status    |
	|  Manager    |
	+-------------+

🎯 Purpose:
- Plans each enabled task for each application
- Renders outputs (copied files, or bundles joined with the task separator)
- Delegates every write and delete to the status manager
- Removes outputs of an earlier build that the current build no longer produces

🔄 Flow of a build:
1. Load the lock file
2. Optionally clean every static root
3. Build every app (concurrently when the async flag is set)
4. Remove orphans
5. Save the lock file

Status runs the same flow against a dry-run manager, so it never writes.

🔍 Example:

	op, err := operation.New(pipeline)
	if err != nil {
		return err
	}

	report, err := op.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Println(report.Counts()[status.StatusNew], "new outputs")
*/
package operation
