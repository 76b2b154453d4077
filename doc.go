// Package ace provides the core of a declarative UI framework: a node tree,
// a frame pipeline, layout and gesture recognition.
//
// Users import this single package for the public API: pipeline lifecycle,
// frame and custom nodes, patterns, layout types, gestures and reactive
// state.
//
// Work is split over two logical threads. The logic thread (TaskJS) owns
// the node tree: it creates nodes, rebuilds dirty custom nodes and marks
// frame nodes dirty. The UI thread (TaskUI) runs measure, layout and paint
// and handles touch input. Each vsync runs these phases in order:
//
//	rebuild     dirty custom nodes, parents first (logic thread)
//	layout      dirty frame nodes grouped by page, shallowest first (UI)
//	render      paint of dirty frame nodes, then render tree sync (UI)
//	deactivate  release nodes detached during the frame (logic thread)
//	messages    platform messages queued on the window (UI)
//
// A TaskExecutor supplies the threads. ThreadExecutor pins each to an OS
// thread; ManualExecutor runs everything on the caller's goroutine and is
// what tests and one-shot tools use.
package ace
