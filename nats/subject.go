package nats

import "fmt"

// Subjects used for pushing table events to connected observers.
// table.<id>.player.all carries every public state delta for a table.

func GetTable2AllPlayerSubject(tableID string) string {
	return fmt.Sprintf("table.%s.player.all", tableID)
}
