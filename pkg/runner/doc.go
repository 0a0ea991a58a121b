/*
Package runner replays recorded gesture traces against a headless engine.

It builds an in-memory list from the trace fixture, drives a reorder.Engine
with a manual clock, answers intents according to the trace's listener
policy and reports what the gesture turned into.

# Key Components

  - Runner: Replays a domain.Trace and returns a Result.
  - Result: The classified outcome, intents, aborts and final item order.
  - TextReporter / JSONReporter: Render a Result for terminals or machines.

# Usage

	r := runner.New(runner.WithConfig(cfg))
	res, err := r.Run(ctx, trace)
	if err != nil {
		log.Fatal(err)
	}
	_ = runner.NewTextReporter(os.Stdout).Report(res)
*/
package runner
