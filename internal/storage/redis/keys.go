package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "wordled"

// userKey returns the Redis key for a User record
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// usernameIndexKey returns the Redis key for the SET of all usernames
func usernameIndexKey() string {
	return fmt.Sprintf("%s:idx:usernames", keyPrefix)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
