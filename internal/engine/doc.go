// Package engine runs Scratch projects as a frame-stepped, cooperative
// scheduler.
//
// A World holds one Sprite per target plus any clones. Each sprite owns
// Chains, one per hat block, and every Tick resumes suspended chains from
// the WaitQueue, starts chains for dispatched triggers, and sweeps deleted
// clones. Blocks are executed by handlers looked up in a Registry; a
// handler suspends its chain by returning Return and records how it will
// resume in its Frame's Suspension
package engine
