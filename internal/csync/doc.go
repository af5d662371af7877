// Package csync provides thread-safe concurrent data structures.
//
// Map is a generic map guarded by a read-write mutex that also keeps
// insertion order, so a properties file can be read and written back
// with its keys in the same sequence.
//
// Example usage:
//
//	values := csync.NewMap[string, value.Value]()
//	values.Set("motd", value.Text("A Minecraft Server"))
//	if v, exists := values.Get("motd"); exists {
//		// Use v safely
//	}
//	values.Range(func(key string, v value.Value) bool {
//		fmt.Printf("%s=%s\n", key, v)
//		return true // Continue iteration
//	})
//
// All operations are thread-safe and can be called concurrently from multiple
// goroutines without additional synchronization.
package csync
