package interfaces

// IRegistrar is the host environment handle the bridge is constructed with.
//
// The host owns it; the bridge only reads from it and never closes it.
type IRegistrar interface {
	ChannelName() string
}
