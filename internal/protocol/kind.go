// Package protocol defines the datagram messages exchanged with game
// clients and the matchmaking front door.
//
// Every datagram is one message: a kind byte followed by the message
// fields in Little-Endian order.
package protocol

import "fmt"

// Kind identifies a message on the wire.
type Kind byte

// Client -> server commands.
const (
	KindConnect Kind = 0x01 + iota
	KindHeroPick
	KindReady
	KindMapGenerated
	KindMove
	KindItemAction
	KindDuelAction
	KindSpellCast
	KindPing
	KindFindGame
)

// Server -> client events.
const (
	KindConnectionStatus Kind = 0x40 + iota
	KindPlayerConnected
	KindHeroPickStage
	KindHeroPicked
	KindPlayerReady
	KindGenerateMap
	KindGameStart
	KindGameEnd
	KindUnitMoved
	KindSpawnPlayer
	KindSpawnMonster
	KindSpawnItem
	KindSpawnConstruction
	KindItemEvent
	KindAttack
	KindDuel
	KindDeath
	KindRespawn
	KindSpell
	KindPong
	KindGameFound
)

var kindNames = map[Kind]string{
	KindConnect:           "Connect",
	KindHeroPick:          "HeroPick",
	KindReady:             "Ready",
	KindMapGenerated:      "MapGenerated",
	KindMove:              "Move",
	KindItemAction:        "ItemAction",
	KindDuelAction:        "DuelAction",
	KindSpellCast:         "SpellCast",
	KindPing:              "Ping",
	KindFindGame:          "FindGame",
	KindConnectionStatus:  "ConnectionStatus",
	KindPlayerConnected:   "PlayerConnected",
	KindHeroPickStage:     "HeroPickStage",
	KindHeroPicked:        "HeroPicked",
	KindPlayerReady:       "PlayerReady",
	KindGenerateMap:       "GenerateMap",
	KindGameStart:         "GameStart",
	KindGameEnd:           "GameEnd",
	KindUnitMoved:         "UnitMoved",
	KindSpawnPlayer:       "SpawnPlayer",
	KindSpawnMonster:      "SpawnMonster",
	KindSpawnItem:         "SpawnItem",
	KindSpawnConstruction: "SpawnConstruction",
	KindItemEvent:         "ItemEvent",
	KindAttack:            "Attack",
	KindDuel:              "Duel",
	KindDeath:             "Death",
	KindRespawn:           "Respawn",
	KindSpell:             "Spell",
	KindPong:              "Pong",
	KindGameFound:         "GameFound",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(0x%02X)", byte(k))
}
