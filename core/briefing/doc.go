// Package briefing runs one sports briefing request end to end.
//
// A [Session] streams the model answer through a [client.Client], recovers a
// structured [intel.Response] after every fragment and hands each partial
// result to a [Sink]. Starting a new run cancels the previous one; results of
// the superseded run are never delivered.
//
//	session := briefing.New(c, briefing.WithObserver(observer))
//	response, err := session.Run(ctx, "NBA trade deadline", briefing.SinkFunc(func(u briefing.Update) {
//	    render.Card(os.Stdout, u.Response)
//	}))
package briefing
