// Package stream publishes committed transitions to Redis pub/sub so other
// services can react to state changes without polling the database.
//
// A Publisher produces post-commit actions for the fsm engine; each
// governed (entity, field) pair gets its own channel, named by Channel.
// Delivery inherits post-commit semantics: at-most-once, best-effort, and
// never able to affect the commit that produced the event.
//
//	client, err := stream.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	pub := stream.NewPublisher(client)
//
//	engine := fsm.MustNew(
//	    fsm.WithDefinition(def),
//	    fsm.WithWildcardAction("user", "user_state", "stream",
//	        pub.Action("user", "user_state")),
//	)
//
// On the consuming side:
//
//	sub := stream.NewSubscriber(ctx, client, "user", "user_state", nil)
//	for ev := range sub.Events() {
//	    // react to ev.From -> ev.To
//	}
package stream
