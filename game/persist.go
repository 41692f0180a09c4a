package game

// PersistTableState stores post-mutation table snapshots.
type PersistTableState interface {
	Save(tableID string, snapshot *TableSnapshot) error
	Load(tableID string) (*TableSnapshot, error)
	Remove(tableID string) error
}
