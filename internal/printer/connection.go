package printer

// Connection is the byte sink to one physical device. Write blocks
// until the data is handed to the device and the hardware settling
// delay has elapsed; callers may issue the next write immediately
// after it returns. The connection is owned by one orchestrator at a
// time, there is no concurrent write path.
type Connection interface {
	Write(data []byte) error
	Close() error
}
